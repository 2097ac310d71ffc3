package main

// version is the panel-pulse release version, overridable at build time via
// -ldflags "-X main.version=...".
var version = "0.3.0"
