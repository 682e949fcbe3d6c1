//go:build dev

package main

// devBuild enables the dev server check. `wails dev` builds with the dev tag.
const devBuild = true
