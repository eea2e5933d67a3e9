package sessions

import _ "embed"

// PeerScript is the server loop run by the peer process.
//
//go:embed peer.lisp
var PeerScript string
