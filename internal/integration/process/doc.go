// Package process runs child processes in the foreground.
//
// The viewer hands the terminal to one child at a time and blocks until it
// exits. A Runner starts the command, waits for it and reports how it ended:
//
//	proc, err := process.NewExecRunner().Run("editor", exec.Command("vim", path))
//	if err != nil {
//	    // the command could not be started
//	}
//	fmt.Printf("exit code: %d\n", proc.ExitCode())
//
// A non-zero exit status is not an error from the Runner's point of view; it
// is reported through Process.ExitCode and Process.State.
//
// There is no cancellation and no timeout: once started, the child runs until
// it exits on its own.
package process
