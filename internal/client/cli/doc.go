// Package cli provides the interactive sx command-line client.
//
// It offers the dashboard operations as commands: save or forget the API
// token, show the authentication status, list files, download the export,
// rename a file, print a file's links with a QR code, and serve the browser
// dashboard. Without arguments the commands are read from an interactive
// REPL; with arguments a single command is run and its error decides the
// exit status.
//
// See App.Run and runREPL for details.
package cli
