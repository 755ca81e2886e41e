package platform

// Package platform contains OS integration: the default downloads directory,
// local archive paths and revealing a downloaded archive in the file manager.
