// Package cli provides the interactive userkeeper command-line client.
//
// It wires configuration, the HTTP API client and a REPL. The session token
// returned by register or login is held in memory for the lifetime of the
// process and sent with every gated command. A background watcher pings the
// server and flips the prompt between online and offline.
//
// Commands:
//
//	register   create an account (password read without echo)
//	login      authenticate
//	rights     list every right with its owner
//	myrights   list the rights of the logged-in user
//	grant      attach a right to a user id
//	whoami     show the logged-in user
//	logout     forget the session token
//	exit|quit  leave the program
package cli
