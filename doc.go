/*
Package moodscape runs a single-session emotional check-in.

A check-in starts with free text. The text is sent to a classifier which
answers with a mood label; the label selects a short guided ritual (a title
and an ordered list of steps) and a color theme. The user steps through the
ritual one card at a time and returns to the input screen when it completes.
Labels without a registered ritual fall back to the Calm ritual.

# Usage

	classifier := classifier.New("http://localhost:8000/predict")
	eng, err := moodscape.New(classifier)
	if err != nil {
		log.Fatal(err)
	}
	defer eng.Close()

	_ = eng.SubmitText("I have a big exam tomorrow")
	session, _ := eng.WaitSettled(ctx)
	fmt.Println(session.Ritual.Title, session.CurrentStep())
	eng.AdvanceStep()

Only the latest submission can change the session. A response that arrives
after a reset, or after a newer submission, is discarded. Classification is
bounded by a timeout (10s by default); failures return the session to the
input screen with the text preserved and a notice describing the failure.

# Adapters

  - pkg/adapters/classifier: HTTP client for the classifier service.
  - pkg/adapters/memory: in-process classifiers for development and tests.
  - pkg/adapters/http: REST and SSE surface over one session.
  - pkg/adapters/mcp: the session exposed as MCP tools.
*/
package moodscape
