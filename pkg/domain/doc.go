/*
Package domain contains the core models of the MoodScape check-in cycle.

It defines the values the Session Controller works with and is kept free of
I/O, persistence and presentation concerns.

# Key Entities

  - MoodLabel: the discrete classification returned by the classifier.
  - Ritual: a titled, ordered list of instructional steps for a mood.
  - Theme: the presentational palette associated with a mood.
  - Session: a snapshot of the single mutable check-in cycle (Idle, Pending, Playing).
  - ClassificationError: the collapsed failure outcome of a classifier call.
*/
package domain
