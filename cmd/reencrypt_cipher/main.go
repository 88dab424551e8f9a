// Command reencrypt_cipher changes the store password of sealed wallet files.
// Each file is opened with the old password and sealed again under the new
// one with a fresh salt and nonce. Files are replaced atomically.
//
// Usage: go run ./cmd/reencrypt_cipher --dir ./wallets
package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"
	"golang.org/x/term"

	"github.com/sergeybanach/wallet-app-1/internal/crypto"
	"github.com/sergeybanach/wallet-app-1/internal/model"
	"github.com/sergeybanach/wallet-app-1/internal/store"
)

func main() {
	app := cli.NewApp()
	app.Name = "reencrypt_cipher"
	app.Usage = "re-seal wallet files under a new store password"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:  "dir",
			Usage: "wallet directory of the file store",
			Value: "./wallets",
		},
		&cli.StringFlag{
			Name:  "file",
			Usage: "re-seal only this file",
		},
	}
	app.Action = resealAction

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func resealAction(ctx *cli.Context) error {
	files, err := targets(ctx.String("dir"), ctx.String("file"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return errors.New("no wallet files found")
	}

	oldPassword, err := readPassword("Current password: ")
	if err != nil {
		return err
	}
	defer clear(oldPassword)
	newPassword, err := readPassword("New password: ")
	if err != nil {
		return err
	}
	defer clear(newPassword)
	confirm, err := readPassword("Repeat new password: ")
	if err != nil {
		return err
	}
	defer clear(confirm)
	if string(newPassword) != string(confirm) {
		return errors.New("passwords do not match")
	}

	for _, path := range files {
		if err := resealFile(path, oldPassword, newPassword); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		fmt.Println("re-sealed", path)
	}
	return nil
}

func targets(dir, file string) ([]string, error) {
	if file != "" {
		return []string{file}, nil
	}
	return filepath.Glob(filepath.Join(dir, "*"+store.FileExt))
}

func resealFile(path string, oldPassword, newPassword []byte) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	var sealed model.SealedWallet
	if err := json.Unmarshal(data, &sealed); err != nil {
		return fmt.Errorf("failed to parse wallet file: %w", err)
	}

	resealed, err := crypto.Reseal(&sealed, oldPassword, newPassword, crypto.DefaultParams)
	if store.IsInvalidPassword(err) {
		return errors.New("current password is wrong")
	}
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(resealed, "", "  ")
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, out, 0o600); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func readPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, errors.New("stdin is not a terminal")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)
	password, err := term.ReadPassword(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to read password: %w", err)
	}
	if len(password) == 0 {
		return nil, errors.New("password cannot be empty")
	}
	return password, nil
}
