package download

// Package download implements the download lifecycle controller: it keeps the
// current selection, gates submission behind notification permission, hands
// the transfer to a TransferService, correlates the asynchronous completion
// event with the pending handle and announces the classified outcome.
