//go:build !windows

package config

func foldCase(p string) string {
	return p
}
