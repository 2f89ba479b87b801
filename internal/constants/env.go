package constants

// EnvSafe enables safe mode when set, like --safe.
const EnvSafe = "CRONRUNNER_SAFE"

// EnvEnvFile points at an env-style file, like --env <FILE>.
const EnvEnvFile = "CRONRUNNER_ENV"

// EnvNoColor disables terminal styling when set and non-empty.
const EnvNoColor = "NO_COLOR"
