package main

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/merkle"
	"github.com/spf13/cobra"
)

func merkleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merkle",
		Short: "Build airdrop merkle trees",
		Long: `Build airdrop merkle trees.

The input file lists one account address per line. Empty lines and lines
starting with # are ignored.`,
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "root <accounts-file>",
			Short: "Print the hex encoded root of the tree",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				tree, err := loadTree(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(tree.Root()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "proof <accounts-file> <address>",
			Short: "Print the proof of an account as a JSON list",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				tree, err := loadTree(args[0])
				if err != nil {
					return err
				}
				addr, err := suitdrop.ParseAddress(args[1])
				if err != nil {
					return errors.Wrap(err, "address")
				}
				proof, err := tree.Proof([]byte(addr.String()))
				if err != nil {
					return errors.Wrapf(err, "account %s", addr)
				}
				hexProof := make([]string, len(proof))
				for i, p := range proof {
					hexProof[i] = hex.EncodeToString(p)
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(hexProof)
			},
		},
	)
	return cmd
}

func loadTree(path string) (*merkle.Tree, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "open %s: %s", path, err)
	}
	defer fd.Close()

	accounts, err := readAccounts(fd)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return merkle.NewTree(accounts)
}

// readAccounts returns the leaf data of all accounts listed, which is the
// bech32 representation of each address.
func readAccounts(r io.Reader) ([][]byte, error) {
	var leaves [][]byte
	s := bufio.NewScanner(r)
	for line := 1; s.Scan(); line++ {
		text := strings.TrimSpace(s.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		addr, err := suitdrop.ParseAddress(text)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", line)
		}
		leaves = append(leaves, []byte(addr.String()))
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read: %s", err)
	}
	return leaves, nil
}
