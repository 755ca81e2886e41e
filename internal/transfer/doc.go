package transfer

// Package transfer is the background transfer engine behind the download
// controller. It fetches archives over HTTP into a gocloud blob bucket,
// reports progress, answers status queries by handle and publishes a
// completion event to subscribers when each transfer ends.
