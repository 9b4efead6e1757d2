package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/moodscape"
	"github.com/aretw0/moodscape/internal/config"
	"github.com/aretw0/moodscape/internal/metrics"
	"github.com/aretw0/moodscape/pkg/adapters/classifier"
	"github.com/aretw0/moodscape/pkg/adapters/memory"
	"github.com/aretw0/moodscape/pkg/catalog"
	"github.com/aretw0/moodscape/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

// NewEngine builds an Engine with standard CLI conventions.
// When reg is non-nil the Prometheus collectors are registered with it.
func NewEngine(cfg *config.Config, logger *slog.Logger, reg prometheus.Registerer) (*moodscape.Engine, error) {
	rituals, themes, err := catalog.Load(cfg.RitualsPath)
	if err != nil {
		return nil, fmt.Errorf("error loading rituals: %w", err)
	}

	opts := []moodscape.Option{
		moodscape.WithLogger(logger),
		moodscape.WithCatalog(rituals, themes),
		moodscape.WithTimeout(cfg.ClassifierTimeout),
	}

	if logger.Enabled(context.Background(), slog.LevelDebug) {
		opts = append(opts, moodscape.WithLifecycleHooks(debugHooks(logger)))
	}

	if reg != nil {
		collector, err := metrics.New(reg)
		if err != nil {
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		opts = append(opts, moodscape.WithLifecycleHooks(collector.Hooks()))
	}

	engine, err := moodscape.New(newClassifier(cfg, logger), opts...)
	if err != nil {
		return nil, fmt.Errorf("error initializing engine: %w", err)
	}
	return engine, nil
}

func newClassifier(cfg *config.Config, logger *slog.Logger) ports.Classifier {
	if cfg.MockClassifier {
		logger.Info("Using keyword mock classifier")
		return memory.NewKeyword()
	}
	return classifier.New(cfg.ClassifierURL,
		classifier.WithTimeout(cfg.ClassifierTimeout),
		classifier.WithLogger(logger),
	)
}
