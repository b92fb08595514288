/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// keytool inspects adminstore keys, page tokens and rows.
package main

import (
	"os"

	"github.com/suparena/adminstore/cmd/keytool/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
