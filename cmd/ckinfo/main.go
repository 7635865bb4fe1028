// Command ckinfo loads a PKCS#11 library, reports its CK_INFO and checks the
// mutex callbacks it would be handed.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
