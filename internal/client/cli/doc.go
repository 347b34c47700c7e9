// Package cli is the interactive TaskHub terminal client.
//
// It has three screens that share one REPL:
//
//	auth       register, login
//	dashboard  list, search, filter, add, edit, status, delete, show
//	profile    profile, editprofile
//
// The session token lives only in memory; logout or exit forgets it.
package cli
