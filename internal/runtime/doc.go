// Package runtime implements the Session Controller state machine.
package runtime
