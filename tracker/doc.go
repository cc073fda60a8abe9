// Package tracker implements the cross-platform tracking state machine.
//
// A Coordinator owns one session per tracked stream. While a session runs,
// its loop periodically drains the Observer (the distinct chatters seen since
// the last report), filters known bots, posts the result to the output
// channel, bumps the per-session appearance Tally and reports the stream's
// live viewer count. Raids land in the session's RaidLedger. When the session
// stops, the coordinator emits a summary (appeared-once list, appeared-often
// list, raiders) and clears all session state.
//
// All session state lives on the session struct rather than package globals,
// so several streams can be tracked at once without sharing counters.
package tracker
