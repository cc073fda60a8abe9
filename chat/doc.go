// Package chat adapts the Twitch IRC connection for the tracker.
//
// The client joins and leaves channels as sessions start and stop, records
// every message author against the channel it chatted in, and turns raid
// USERNOTICEs (msg-id=raid, with display-name and msg-param-viewerCount tags)
// into raid events. The connection is kept alive indefinitely with capped
// exponential backoff between reconnect attempts.
//
// Credentials: the IRC client requires the bot's Twitch login and a user
// OAuth token with the chat:read scope. An app access token will not work
// here.
package chat
