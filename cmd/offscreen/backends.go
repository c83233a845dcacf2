package main

import _ "github.com/gogpu/offscreen/backend/device"
