// Command testhelper drives the SDK from the command line for cross-SDK
// interoperability tests: payloads produced here must decrypt in the
// browser SDK and vice versa. JSON in on stdin where needed, JSON out on
// stdout.
package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"time"

	formvault "github.com/formvault/client-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <command> [args]")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	switch os.Args[1] {
	case "hash-email":
		if len(os.Args) < 3 {
			fatal("usage: testhelper hash-email <address>")
		}
		fmt.Println(formvault.HashEmail(os.Args[2]))
	case "encrypt-waitlist":
		encryptWaitlist(ctx)
	case "encrypt-registration":
		encryptRegistration()
	case "recover":
		recoverKey()
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func newPipeline() *formvault.Pipeline {
	pipeline, err := formvault.NewPipeline(
		os.Getenv("FORMVAULT_BRIDGE_URL"),
		os.Getenv("FORMVAULT_CANISTER_ID"),
	)
	if err != nil {
		fatal("create pipeline: %v", err)
	}
	return pipeline
}

func encryptWaitlist(ctx context.Context) {
	var form formvault.WaitlistForm
	if err := json.NewDecoder(os.Stdin).Decode(&form); err != nil {
		fatal("decode form: %v", err)
	}

	submission, err := newPipeline().EncryptWaitlist(ctx, form)
	if err != nil {
		fatal("encrypt waitlist: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(submission); err != nil {
		fatal("encode submission: %v", err)
	}
}

func encryptRegistration() {
	var form formvault.RegistrationForm
	if err := json.NewDecoder(os.Stdin).Decode(&form); err != nil {
		fatal("decode form: %v", err)
	}

	submission, err := newPipeline().EncryptRegistration(form)
	if err != nil {
		fatal("encrypt registration: %v", err)
	}

	if err := json.NewEncoder(os.Stdout).Encode(submission); err != nil {
		fatal("encode submission: %v", err)
	}
}

func recoverKey() {
	var input struct {
		Password             string            `json:"password"`
		PasswordSalt         string            `json:"password_salt"`
		EncryptedRecoveryKey string            `json:"encrypted_recovery_key"`
		Fields               map[string]string `json:"fields"`
	}
	if err := json.NewDecoder(os.Stdin).Decode(&input); err != nil {
		fatal("decode input: %v", err)
	}

	pipeline := newPipeline()
	master, err := pipeline.RecoverMasterKey(input.Password, input.PasswordSalt, input.EncryptedRecoveryKey)
	if err != nil {
		fatal("recover master key: %v", err)
	}

	out := struct {
		MasterKey string            `json:"master_key"`
		Fields    map[string]string `json:"fields,omitempty"`
	}{
		MasterKey: base64.StdEncoding.EncodeToString(master),
	}

	if len(input.Fields) > 0 {
		out.Fields = make(map[string]string, len(input.Fields))
		for name, blob := range input.Fields {
			plaintext, err := pipeline.DecryptField(blob, master)
			if err != nil {
				fatal("decrypt %s: %v", name, err)
			}
			out.Fields[name] = plaintext
		}
	}

	if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
		fatal("encode output: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
