package boa

// Version is the interpreter release, reported by `boa --version`.
const Version = "0.1.0"
