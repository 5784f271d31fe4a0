// Package cli provides the interactive job board command-line client.
//
// It wires configuration, the local session store, API services and the
// terminal views into a REPL. Candidates browse jobs, apply with a PDF
// resume and follow their applications on a status board. Employers post
// and manage jobs and move applicants through the hiring stages.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
