package audio

import (
	"errors"
	"os"
	"os/exec"
	"sync"
)

// Process is a running player as seen by the Controller.
type Process interface {
	Pid() int
	// Kill sends a termination signal without waiting for the exit.
	Kill() error
	// Exited polls without blocking. A non-nil error means the state could
	// not be determined.
	Exited() (bool, error)
}

// Spawner starts player processes.
type Spawner interface {
	Spawn(command string, args []string) (Process, error)
}

// ExecSpawner starts real OS processes. Player output is discarded so it
// cannot interleave with a stdio command channel.
type ExecSpawner struct{}

// Spawn starts command and reaps it in the background.
func (ExecSpawner) Spawn(command string, args []string) (Process, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	p := &execProcess{cmd: cmd, done: make(chan struct{})}
	go func() {
		err := cmd.Wait()
		p.mu.Lock()
		p.waitErr = err
		p.mu.Unlock()
		close(p.done)
	}()
	return p, nil
}

type execProcess struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu      sync.Mutex
	waitErr error
}

func (p *execProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *execProcess) Kill() error {
	err := p.cmd.Process.Kill()
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}
	return err
}

func (p *execProcess) Exited() (bool, error) {
	select {
	case <-p.done:
	default:
		return false, nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	var exitErr *exec.ExitError
	if p.waitErr != nil && !errors.As(p.waitErr, &exitErr) {
		// Wait itself failed; the process state is unknown.
		return false, p.waitErr
	}
	return true, nil
}
