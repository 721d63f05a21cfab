package bigcrypt_test

import (
	"fmt"

	"github.com/codahale/bigcrypt"
)

func ExampleHash() {
	// Hash a password under a fixed salt. Pass a negative salt to have
	// one drawn from crypto/rand instead.
	hash, _ := bigcrypt.Hash([]byte("passphrase"), 94)
	fmt.Println(hash)
	// Output:
	// S/8NbAAlzbYO66hAa9XZyWy2
}

func ExampleVerify() {
	ok, _ := bigcrypt.Verify([]byte("passphrase"), "S/8NbAAlzbYO66hAa9XZyWy2")
	fmt.Println(ok)

	ok, _ = bigcrypt.Verify([]byte("not the passphrase"), "S/8NbAAlzbYO66hAa9XZyWy2")
	fmt.Println(ok)
	// Output:
	// true
	// false
}
