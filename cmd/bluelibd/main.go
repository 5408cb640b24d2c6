// Copyright (c) 2026 Kyradjis
// released under the MIT license

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"syscall"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"

	"github.com/docopt/docopt-go"
	"github.com/kyradjis/bluelib/chathost"
	"github.com/kyradjis/bluelib/logger"
	"github.com/kyradjis/bluelib/markdown"
	"github.com/kyradjis/bluelib/mkcerts"
	"github.com/kyradjis/bluelib/text"
)

// set via linker flags by the build:
var commit = ""
var version = "0.1.0"

// get a password from stdin from the user
func getPasswordFromTerminal() string {
	bytePassword, err := term.ReadPassword(int(syscall.Stdin))
	if err != nil {
		log.Fatal("Error reading password:", err.Error())
	}
	return string(bytePassword)
}

func fileDoesNotExist(file string) bool {
	if _, err := os.Stat(file); os.IsNotExist(err) {
		return true
	}
	return false
}

// implements the `bluelibd mkcerts` command
func doMkcerts(configFile string, quiet bool) {
	config, err := chathost.LoadConfig(configFile)
	if err != nil {
		log.Fatal(err)
	}
	if config.Host.TLS.Cert == "" {
		log.Fatal("host.tls is not configured")
	}
	if !quiet {
		log.Println("making self-signed certificates")
	}

	cert, key := config.Host.TLS.Cert, config.Host.TLS.Key
	if !(fileDoesNotExist(cert) && fileDoesNotExist(key)) {
		log.Fatalf("Preexisting TLS cert and/or key files: %s %s", cert, key)
	}
	if err := mkcerts.CreateCert("BlueLib", config.Host.Name, cert, key); err != nil {
		log.Fatal("  Could not create certificate:", err.Error())
	}
	if !quiet {
		log.Printf("  Certificate created at %s : %s\n", cert, key)
	}
}

// implements the `bluelibd format` command: stdin lines through the
// pipeline, one rendered line out per line in.
func doFormat(renderer string) {
	pipeline := markdown.NewPipeline(logger.NewDefault(logger.LogWarning))

	render := func(styled *text.StyledText) (string, error) {
		switch renderer {
		case "plain":
			return text.RenderPlain(styled), nil
		case "irc":
			return text.RenderIRC(styled), nil
		case "codes":
			return text.RenderFormatCodes(styled), nil
		case "json":
			blob, err := json.Marshal(styled)
			return string(blob), err
		}
		return "", fmt.Errorf("unknown renderer [%s]", renderer)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		out, err := render(pipeline.FormatString(scanner.Text()))
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(out)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}

func main() {
	version := version
	if commit != "" {
		version = fmt.Sprintf("%s-%s", version, commit)
	}
	usage := `bluelibd.
Usage:
	bluelibd run [--conf <filename>] [--quiet]
	bluelibd format [--renderer <name>]
	bluelibd genpasswd
	bluelibd mkcerts [--conf <filename>] [--quiet]
	bluelibd -h | --help
	bluelibd --version
Options:
	--conf <filename>  Configuration file to use [default: bluelib.yaml].
	--renderer <name>  Output renderer: plain, irc, codes, json [default: plain].
	--quiet            Don't show startup/shutdown lines.
	-h --help          Show this screen.
	--version          Show version.`

	arguments, _ := docopt.ParseArgs(usage, nil, version)

	// don't require a config file for genpasswd or format
	if arguments["genpasswd"].(bool) {
		var password string
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Enter Password: ")
			password = getPasswordFromTerminal()
			fmt.Print("\n")
			fmt.Print("Reenter Password: ")
			confirm := getPasswordFromTerminal()
			fmt.Print("\n")
			if confirm != password {
				log.Fatal("passwords do not match")
			}
		} else {
			reader := bufio.NewReader(os.Stdin)
			text, _ := reader.ReadString('\n')
			password = strings.TrimSpace(text)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatal("encoding error:", err.Error())
		}
		fmt.Println(string(hash))
		return
	} else if arguments["format"].(bool) {
		doFormat(arguments["--renderer"].(string))
		return
	} else if arguments["mkcerts"].(bool) {
		doMkcerts(arguments["--conf"].(string), arguments["--quiet"].(bool))
		return
	}

	configfile := arguments["--conf"].(string)
	config, err := chathost.LoadConfig(configfile)
	if err != nil {
		log.Fatal("Config file did not load successfully: ", err.Error())
	}

	logman, err := logger.NewManager(config.Logging)
	if err != nil {
		log.Fatal("Logger did not load successfully:", err.Error())
	}

	if arguments["run"].(bool) {
		if !arguments["--quiet"].(bool) {
			logman.Info("host", fmt.Sprintf("bluelibd %s starting", version))
		}
		server, err := chathost.NewServer(config, logman)
		if err != nil {
			logman.Error("host", fmt.Sprintf("Could not load server: %s", err.Error()))
			os.Exit(1)
		}
		server.Run()
	}
}
