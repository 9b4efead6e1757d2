// Package reflection produces short supportive replies to a follow-up message.
// It is rule based and stateless.
package reflection

import (
	"strings"

	"github.com/aretw0/moodscape/pkg/domain"
)

type rule struct {
	words []string
	reply string
}

var rules = []rule{
	{[]string{"why"}, "It's natural to look for reasons. Sometimes feelings just exist."},
	{[]string{"tired", "sleep"}, "Rest is productive too. Have you slept well lately?"},
	{[]string{"work", "job"}, "Work carries a heavy weight. Remember you are more than your output."},
	{[]string{"scared", "afraid"}, "Fear is just a reaction. You are safe right now."},
}

var byMood = map[domain.MoodLabel]string{
	domain.MoodAnxious:   "Take a breath. That anxiety is trying to protect you, but you are safe.",
	domain.MoodSad:       "Be gentle with yourself. This feeling is heavy, but it will pass.",
	domain.MoodEnergized: "Hold onto that energy! What is one small thing you can do with it?",
}

// DefaultReply is used when neither the text nor the mood matches a rule.
const DefaultReply = "I hear you. Tell me more about that."

// Reply picks a reply for text, falling back to one keyed by mood.
// Keyword rules are checked in order on the lower-cased text.
func Reply(text string, mood domain.MoodLabel) string {
	lower := strings.ToLower(text)
	for _, r := range rules {
		for _, w := range r.words {
			if strings.Contains(lower, w) {
				return r.reply
			}
		}
	}
	if reply, ok := byMood[mood]; ok {
		return reply
	}
	return DefaultReply
}
