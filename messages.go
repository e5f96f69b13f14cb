package main

import (
	"memory-nft-tui/nft"
	"memory-nft-tui/sui"
)

// -------------------- TEA MESSAGES --------------------
// All custom message types for The Elm Architecture

// clipboardCopiedMsg indicates clipboard copy completed
type clipboardCopiedMsg struct {
	what string
}

// clearCopiedMsg clears the clipboard feedback after a delay
type clearCopiedMsg struct{}

// logInitMsg signals that log viewport should be initialized
type logInitMsg struct{}

// rpcConnectedMsg contains result of RPC connection attempt
type rpcConnectedMsg struct {
	seq    int
	url    string
	client *sui.Client
	err    error
}

// detailsLoadedMsg contains the balance of one identity
type detailsLoadedMsg struct {
	d sui.IdentityDetails
}

// submissionSettledMsg carries the wallet's answer for one attempt
type submissionSettledMsg struct {
	attempt nft.Attempt
	receipt nft.Receipt
	err     error
}
