// Copyright 2025 The GoGPU Authors
// SPDX-License-Identifier: MIT

// Package forge is the rendering core: a typed-handle RHI over an
// explicit graphics backend, a deferred command list, a render graph
// and a frame pacer.
//
// The root package is the handle boundary. Creation returns opaque
// versioned handles; destruction is explicit; stale handles fail
// lookup instead of aliasing new objects. The subsystems underneath —
// graph, frame, cmdlist, cache — work in backend objects resolved
// through a Device.
//
// Backends register themselves like database drivers: import one for
// its side effect and select it by variant.
//
//	import _ "github.com/gogpu/forge/hal/vulkan"
//
//	sys, err := forge.Initialize(&forge.InitOptions{AppName: "viewer"})
package forge
