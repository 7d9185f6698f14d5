// Copyright (C) The Kaksplot Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package main

import (
	"github.com/molevol/kaksplot"
)

func main() {
	kaksplot.Main()
}
