package clubforms

// Version is the release version, overridden at build time with
// -ldflags "-X github.com/aretw0/clubforms.Version=...".
var Version = "0.1.0"
