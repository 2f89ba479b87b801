package crontab

import (
	"errors"
	"os"
	"os/exec"
)

// DefaultShell is used when no SHELL variable is in scope for a job.
const DefaultShell = "/bin/sh"

// RunResultDetail is the low level outcome of a run attempt. Concrete
// types are DidRun, DidNotRun and IsRunning.
type RunResultDetail interface {
	runResultDetail()
}

// DidRun means the command was spawned and waited for.
type DidRun struct {
	// ExitCode is nil if the process was killed by a signal.
	ExitCode *int
}

func (DidRun) runResultDetail() {}

// DidNotRun means the command never started.
type DidNotRun struct {
	// Reason is a plain English explanation of the failure.
	Reason string
}

func (DidNotRun) runResultDetail() {}

// IsRunning means the command was spawned detached and has not been
// waited for. Its exit status will never be observed here.
type IsRunning struct {
	PID int
}

func (IsRunning) runResultDetail() {}

// RunResult is what a run attempt produced.
type RunResult struct {
	// WasSuccessful means the command ran AND exited 0. For detached
	// runs it is always false: success is never knowable, callers must
	// inspect Detail to tell "is running" from "did not run".
	WasSuccessful bool
	Detail        RunResultDetail
}

// shellCommand is a fully resolved invocation: which shell, in which
// directory, with which extra environment.
type shellCommand struct {
	env     map[string]string
	shell   string
	home    string
	command string
}

// Crontab answers job queries over a parsed token sequence and runs the
// jobs in it. The token sequence is immutable after construction; the
// only mutable state is the optional base environment set via SetEnv.
// It is not meant for concurrent mutation.
type Crontab struct {
	tokens  []Token
	baseEnv map[string]string
}

// New wraps an already parsed token sequence.
func New(tokens []Token) *Crontab {
	return &Crontab{tokens: tokens}
}

// Tokens returns the underlying token sequence, in parse order.
func (c *Crontab) Tokens() []Token {
	return c.tokens
}

// HasRunnableJobs reports whether the crontab contains any job at all.
// It may well be empty, or contain only variables and comments.
func (c *Crontab) HasRunnableJobs() bool {
	for _, token := range c.tokens {
		if _, ok := token.(CronJob); ok {
			return true
		}
	}
	return false
}

// Jobs returns all the jobs, and only the jobs, in parse order. Ignored
// jobs are not included.
func (c *Crontab) Jobs() []CronJob {
	var jobs []CronJob
	for _, token := range c.tokens {
		if job, ok := token.(CronJob); ok {
			jobs = append(jobs, job)
		}
	}
	return jobs
}

// HasJob reports whether the exact job, all fields included, is in the
// crontab.
func (c *Crontab) HasJob(job CronJob) bool {
	for _, candidate := range c.Jobs() {
		if candidate.Equal(job) {
			return true
		}
	}
	return false
}

// GetJobFromUID returns the job with the given UID, or nil.
func (c *Crontab) GetJobFromUID(uid int) *CronJob {
	for _, job := range c.Jobs() {
		if job.UID == uid {
			return &job
		}
	}
	return nil
}

// GetJobFromFingerprint returns the job with the given fingerprint, or
// nil.
func (c *Crontab) GetJobFromFingerprint(fp uint64) *CronJob {
	for _, job := range c.Jobs() {
		if job.Fingerprint == fp {
			return &job
		}
	}
	return nil
}

// GetJobFromTag returns the job carrying the given tag, or nil.
func (c *Crontab) GetJobFromTag(tag string) *CronJob {
	for _, job := range c.Jobs() {
		if job.Tag == tag {
			return &job
		}
	}
	return nil
}

// SetEnv replaces the environment the child process would otherwise
// inherit from this process. It does not merge: only the given variables
// (plus those declared in the crontab itself) reach the child. It has no
// effect on variables declared inside the crontab text.
func (c *Crontab) SetEnv(env map[string]string) {
	c.baseEnv = env
}

// Run executes a job and waits for it to finish. The result is always a
// RunResult, never an error: precondition and spawn failures come back
// as DidNotRun with a reason.
func (c *Crontab) Run(job CronJob) RunResult {
	sc, err := c.makeShellCommand(job)
	if err != nil {
		return RunResult{WasSuccessful: false, Detail: DidNotRun{Reason: err.Error()}}
	}

	cmd := exec.Command(sc.shell, "-c", sc.command)
	cmd.Dir = sc.home
	cmd.Env = c.childEnviron(sc.env)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr == nil {
		code := 0
		return RunResult{WasSuccessful: true, Detail: DidRun{ExitCode: &code}}
	}
	if exitErr, ok := runErr.(*exec.ExitError); ok {
		var exitCode *int
		if code := exitErr.ExitCode(); code >= 0 {
			exitCode = &code
		}
		return RunResult{WasSuccessful: false, Detail: DidRun{ExitCode: exitCode}}
	}
	return RunResult{
		WasSuccessful: false,
		Detail:        DidNotRun{Reason: "Failed to run command (does shell exist?)."},
	}
}

// RunDetached spawns a job and returns without waiting. The child's
// stdio is redirected to the null device and the child outlives this
// process by design; the returned PID is the only handle the caller
// gets.
func (c *Crontab) RunDetached(job CronJob) RunResult {
	sc, err := c.makeShellCommand(job)
	if err != nil {
		return RunResult{WasSuccessful: false, Detail: DidNotRun{Reason: err.Error()}}
	}

	cmd := exec.Command(sc.shell, "-c", sc.command)
	cmd.Dir = sc.home
	cmd.Env = c.childEnviron(sc.env)
	// Stdin, Stdout and Stderr left nil: os/exec connects them to the
	// null device.

	if startErr := cmd.Start(); startErr != nil {
		return RunResult{
			WasSuccessful: false,
			Detail:        DidNotRun{Reason: "Failed to run command (does shell exist?)."},
		}
	}

	pid := cmd.Process.Pid
	_ = cmd.Process.Release()

	return RunResult{WasSuccessful: false, Detail: IsRunning{PID: pid}}
}

// makeShellCommand resolves a job into a concrete invocation: scoped
// variables, shell, and working directory.
func (c *Crontab) makeShellCommand(job CronJob) (shellCommand, error) {
	if !c.HasJob(job) {
		return shellCommand{}, errors.New("The given job is not in the crontab.")
	}

	env := c.extractVariables(job)
	shell := determineShellToUse(env)
	home, err := determineHomeToUse(env)
	if err != nil {
		return shellCommand{}, err
	}

	return shellCommand{
		env:     env,
		shell:   shell,
		home:    home,
		command: job.Command,
	}, nil
}

// extractVariables collects the variables in scope for a job: a linear
// scan from the top, last write wins, stopping at the target job itself.
// Variables declared after the target are never visible. Ignored jobs
// are transparent to the scan.
func (c *Crontab) extractVariables(target CronJob) map[string]string {
	variables := make(map[string]string)
	for _, token := range c.tokens {
		switch t := token.(type) {
		case Variable:
			variables[t.Identifier] = t.Value
		case CronJob:
			if t.Equal(target) {
				return variables
			}
		}
	}
	return variables
}

// determineShellToUse consumes SHELL from the scoped variables, so it
// does not leak into the child environment as a regular variable.
func determineShellToUse(env map[string]string) string {
	if shell, ok := env["SHELL"]; ok {
		delete(env, "SHELL")
		return shell
	}
	return DefaultShell
}

// determineHomeToUse consumes HOME from the scoped variables, falling
// back to the calling process's HOME.
func determineHomeToUse(env map[string]string) (string, error) {
	if home, ok := env["HOME"]; ok {
		delete(env, "HOME")
		return home, nil
	}
	if home, ok := os.LookupEnv("HOME"); ok {
		return home, nil
	}
	return "", errors.New("Could not read Home directory from environment.")
}

// childEnviron builds the child's environment: the base environment
// (inherited, unless replaced via SetEnv) with the scoped crontab
// variables appended. os/exec keeps the last occurrence of a duplicated
// key, so crontab variables take precedence.
func (c *Crontab) childEnviron(scoped map[string]string) []string {
	var environ []string
	if c.baseEnv != nil {
		environ = make([]string, 0, len(c.baseEnv)+len(scoped))
		for key, value := range c.baseEnv {
			environ = append(environ, key+"="+value)
		}
	} else {
		environ = os.Environ()
	}
	for key, value := range scoped {
		environ = append(environ, key+"="+value)
	}
	return environ
}
