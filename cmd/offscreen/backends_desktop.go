//go:build darwin || desktopgl

package main

import _ "github.com/gogpu/offscreen/backend/desktop"
