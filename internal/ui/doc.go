// Package ui provides the interactive surfaces of the gitscope CLI: the
// console observer that narrates git queries, the interactive menu loop,
// and the help panel shared by the menu and the --helpme flag.
package ui
