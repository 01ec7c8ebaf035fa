// Genkey prints a fresh random TOKEN_SECRET (32 bytes, hex). Pipe it into
// your environment or .env file.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
)

func main() {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating random key: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(hex.EncodeToString(key))
}
