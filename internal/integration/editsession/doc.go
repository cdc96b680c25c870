// Package editsession hands the target file to an external editor and takes it
// back.
//
// A session is strictly ordered:
//
//  1. save the in-memory document to its path
//  2. suspend the terminal UI
//  3. run the editor at the cursor's 1-based line and column, blocking until it exits
//  4. resume the terminal UI (always, even if the editor failed to start)
//  5. reload the document and reclamp the viewport to the current terminal size
//
// A non-zero editor exit status is not an error. Save and reload failures are
// document.FileOpenError values and are fatal to the caller; LaunchError and
// TerminalError are reported but leave the viewer running.
package editsession
