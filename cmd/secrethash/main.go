// Command secrethash prints the bcrypt hash of a write secret, to be set as
// WORKOUTS_WRITE_SECRET_HASH on the service.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/2beens/workoutmap/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	secret := flag.String("secret", "", "the secret to hash (read from stdin if empty)")
	flag.Parse()

	if *secret == "" {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			log.Fatalf("read secret from stdin: %s", err)
		}
		*secret = strings.TrimSpace(line)
	}
	if *secret == "" {
		log.Fatalln("empty secret")
	}

	hash, err := pkg.HashSecret(*secret)
	if err != nil {
		log.Fatalf("hash secret: %s", err)
	}

	fmt.Println(hash)
}
