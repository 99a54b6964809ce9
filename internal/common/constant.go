package common

// AppName is used in prompts, notifications and storage key prefixes.
const AppName = "footcap"

// MinPasswordLength is the shortest password accepted at signup.
const MinPasswordLength = 6
