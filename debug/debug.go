package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Parse bool
	Store bool
	Crypt bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("CFX_DEBUG_PARSE")
	d.Store = boolEnv("CFX_DEBUG_STORE")
	d.Crypt = boolEnv("CFX_DEBUG_CRYPT")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Store() bool {
	return d.Store
}
func Crypt() bool {
	return d.Crypt
}
