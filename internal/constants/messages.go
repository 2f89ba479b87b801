// Package constants groups the user-facing strings and environment
// variable names shared across commands.
package constants

// MsgNoJobs is printed when the crontab has nothing runnable.
const MsgNoJobs = "No jobs to run."

// MsgSelectPrompt asks for a job number. No trailing newline, the
// answer goes on the same line.
const MsgSelectPrompt = ">>> Select a job to run: "

// MsgInvalidSelection is printed when the selection matches no job.
const MsgInvalidSelection = "Invalid job selection."

// MsgUltimateAnswer is printed when job 42 is selected but fewer than
// 42 jobs exist.
const MsgUltimateAnswer = "What was the question again?"
