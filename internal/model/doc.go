package model

// Package model defines domain data structures shared across the app: the
// selection, pending transfer and visible state of the download controller,
// transfer service records, classified outcomes and notification payloads.
