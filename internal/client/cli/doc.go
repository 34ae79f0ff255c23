// Package cli is the todokeeper command-line client.
//
// Every command is a cobra subcommand (register, login, logout, whoami,
// list, add, done, delete, ping); "shell" runs the same commands in an
// interactive loop. The access token from login is kept in a 0600 file and
// sent with every later call. Passwords are read without echo.
package cli
