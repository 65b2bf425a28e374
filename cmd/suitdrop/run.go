package main

import (
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/runtime"
	"github.com/iov-one/suitdrop/store/iavl"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

func runCmd() *cobra.Command {
	var (
		configPath string
		home       string
	)
	cmd := &cobra.Command{
		Use:   "run <script.json>",
		Short: "Execute a script of messages and print the results",
		Long: `Execute a script of messages and print the results as JSON lines.

The genesis section is applied only when the database is empty. Every step
is one of instantiate, execute, batch, migrate, query or commit. An
instantiate step may declare a name, so that later steps can refer to the
created contract as "$name", both in address fields and inside messages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := LoadConfig(configPath)
			if err != nil {
				return err
			}
			if home != "" {
				conf.Home = home
			}
			script, err := loadScript(args[0])
			if err != nil {
				return err
			}
			logger, err := conf.Logger(os.Stderr)
			if err != nil {
				return err
			}
			return run(conf, script, cmd.OutOrStdout(), logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to the TOML configuration file")
	cmd.Flags().StringVar(&home, "home", "", "directory to store files under, overrides the configuration")
	return cmd
}

// Script is a list of messages processed by the run command.
type Script struct {
	Genesis suitdrop.Options `json:"genesis"`
	Steps   []Step           `json:"steps"`
}

// Step declares exactly one operation.
type Step struct {
	Instantiate *InstantiateStep `json:"instantiate,omitempty"`
	Execute     *ExecuteStep     `json:"execute,omitempty"`
	Batch       *BatchStep       `json:"batch,omitempty"`
	Migrate     *MigrateStep     `json:"migrate,omitempty"`
	Query       *QueryStep       `json:"query,omitempty"`
	Commit      *CommitStep      `json:"commit,omitempty"`
}

type InstantiateStep struct {
	Name   string          `json:"name"`
	CodeID uint64          `json:"code_id"`
	Sender string          `json:"sender"`
	Msg    json.RawMessage `json:"msg"`
	Label  string          `json:"label"`
	Admin  string          `json:"admin"`
}

type ExecuteStep struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	Msg      json.RawMessage `json:"msg"`
}

type BatchStep struct {
	Sender string `json:"sender"`
	Msgs   []struct {
		Contract string          `json:"contract"`
		Msg      json.RawMessage `json:"msg"`
	} `json:"msgs"`
}

type MigrateStep struct {
	Contract string          `json:"contract"`
	Sender   string          `json:"sender"`
	CodeID   uint64          `json:"code_id"`
	Msg      json.RawMessage `json:"msg"`
}

type QueryStep struct {
	Contract string          `json:"contract"`
	Msg      json.RawMessage `json:"msg"`
}

type CommitStep struct{}

func loadScript(path string) (*Script, error) {
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "read %s: %s", path, err)
	}
	var s Script
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "script %s: %s", path, err)
	}
	return &s, nil
}

// StepResult is printed for every processed step.
type StepResult struct {
	Step     int              `json:"step"`
	Kind     string           `json:"kind"`
	Contract suitdrop.Address `json:"contract,omitempty"`
	Data     []byte           `json:"data,omitempty"`
	Response json.RawMessage  `json:"response,omitempty"`
	Events   []EventJSON      `json:"events,omitempty"`
	Height   int64            `json:"height,omitempty"`
	AppHash  []byte           `json:"app_hash,omitempty"`
	Code     uint32           `json:"code,omitempty"`
	Error    string           `json:"error,omitempty"`
}

type EventJSON struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
}

func eventsJSON(events []suitdrop.Event) []EventJSON {
	res := make([]EventJSON, 0, len(events))
	for _, ev := range events {
		attrs := make(map[string]string, len(ev.Attributes))
		for _, a := range ev.Attributes {
			attrs[string(a.Key)] = string(a.Value)
		}
		res = append(res, EventJSON{Type: ev.Type, Attributes: attrs})
	}
	return res
}

func run(conf Config, script *Script, out io.Writer, logger log.Logger) error {
	reg := prometheus.NewRegistry()
	if conf.MetricsAddr != "" {
		srv := &http.Server{
			Addr:    conf.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server", "err", err)
			}
		}()
		defer srv.Shutdown(context.Background())
	}

	db, err := iavl.NewCommitStore(conf.DBPath(), "suitdrop")
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	rt, err := runtime.New(db, logger, runtime.NewMetrics(reg))
	if err != nil {
		return err
	}
	if err := registerCodes(rt); err != nil {
		return err
	}
	if rt.ChainID() == "" {
		if err := rt.InitChain(conf.ChainID, script.Genesis); err != nil {
			return errors.Wrap(err, "init chain")
		}
		logger.Info("chain initialized", "chain_id", conf.ChainID)
	}

	r := &runner{
		rt:        rt,
		names:     make(map[string]suitdrop.Address),
		blockTime: conf.BlockTime.Duration,
		now:       time.Now().UTC(),
	}
	if err := r.beginBlock(); err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	for i, step := range script.Steps {
		res := r.step(step)
		res.Step = i
		if err := enc.Encode(res); err != nil {
			return errors.Wrapf(errors.ErrInput, "write result: %s", err)
		}
	}
	if _, err := rt.Commit(); err != nil {
		return err
	}
	return nil
}

type runner struct {
	rt        *runtime.Runtime
	names     map[string]suitdrop.Address
	blockTime time.Duration
	now       time.Time
}

func (r *runner) beginBlock() error {
	last, err := r.rt.CommitInfo()
	if err != nil {
		return errors.Wrap(err, "commit info")
	}
	return r.rt.BeginBlock(abci.Header{
		ChainID: r.rt.ChainID(),
		Height:  last.Version + 1,
		Time:    r.now,
	})
}

func (r *runner) step(s Step) StepResult {
	switch {
	case s.Instantiate != nil:
		return r.instantiate(s.Instantiate)
	case s.Execute != nil:
		return r.execute(s.Execute)
	case s.Batch != nil:
		return r.batch(s.Batch)
	case s.Migrate != nil:
		return r.migrate(s.Migrate)
	case s.Query != nil:
		return r.query(s.Query)
	case s.Commit != nil:
		return r.commit()
	default:
		return failed("unknown", errors.Wrap(errors.ErrInput, "empty step"))
	}
}

func (r *runner) instantiate(s *InstantiateStep) StepResult {
	const kind = "instantiate"
	sender, err := r.address(s.Sender)
	if err != nil {
		return failed(kind, errors.Wrap(err, "sender"))
	}
	var admin suitdrop.Address
	if s.Admin != "" {
		if admin, err = r.address(s.Admin); err != nil {
			return failed(kind, errors.Wrap(err, "admin"))
		}
	}
	res, err := r.rt.Instantiate(s.CodeID, sender, r.msg(s.Msg), s.Label, admin)
	if err != nil {
		return failed(kind, err)
	}
	if s.Name != "" {
		r.names[s.Name] = res.Contract
	}
	return delivered(kind, res)
}

func (r *runner) execute(s *ExecuteStep) StepResult {
	const kind = "execute"
	contract, err := r.address(s.Contract)
	if err != nil {
		return failed(kind, errors.Wrap(err, "contract"))
	}
	sender, err := r.address(s.Sender)
	if err != nil {
		return failed(kind, errors.Wrap(err, "sender"))
	}
	res, err := r.rt.Execute(contract, sender, r.msg(s.Msg))
	if err != nil {
		return failed(kind, err)
	}
	return delivered(kind, res)
}

func (r *runner) batch(s *BatchStep) StepResult {
	const kind = "batch"
	sender, err := r.address(s.Sender)
	if err != nil {
		return failed(kind, errors.Wrap(err, "sender"))
	}
	msgs := make([]runtime.BatchMsg, 0, len(s.Msgs))
	for _, m := range s.Msgs {
		contract, err := r.address(m.Contract)
		if err != nil {
			return failed(kind, errors.Wrap(err, "contract"))
		}
		msgs = append(msgs, runtime.BatchMsg{Contract: contract, Msg: r.msg(m.Msg)})
	}
	res, err := r.rt.ExecuteBatch(sender, msgs)
	if err != nil {
		return failed(kind, err)
	}
	return delivered(kind, res)
}

func (r *runner) migrate(s *MigrateStep) StepResult {
	const kind = "migrate"
	contract, err := r.address(s.Contract)
	if err != nil {
		return failed(kind, errors.Wrap(err, "contract"))
	}
	sender, err := r.address(s.Sender)
	if err != nil {
		return failed(kind, errors.Wrap(err, "sender"))
	}
	res, err := r.rt.Migrate(contract, sender, s.CodeID, r.msg(s.Msg))
	if err != nil {
		return failed(kind, err)
	}
	return delivered(kind, res)
}

func (r *runner) query(s *QueryStep) StepResult {
	const kind = "query"
	contract, err := r.address(s.Contract)
	if err != nil {
		return failed(kind, errors.Wrap(err, "contract"))
	}
	resp, err := r.rt.Query(contract, r.msg(s.Msg))
	if err != nil {
		return failed(kind, err)
	}
	return StepResult{Kind: kind, Contract: contract, Response: resp}
}

func (r *runner) commit() StepResult {
	const kind = "commit"
	id, err := r.rt.Commit()
	if err != nil {
		return failed(kind, err)
	}
	r.now = r.now.Add(r.blockTime)
	if err := r.beginBlock(); err != nil {
		return failed(kind, err)
	}
	return StepResult{Kind: kind, Height: id.Version, AppHash: id.Hash}
}

// address resolves a contract name reference or parses an address.
func (r *runner) address(s string) (suitdrop.Address, error) {
	if strings.HasPrefix(s, "$") {
		addr, ok := r.names[s[1:]]
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "contract %q", s)
		}
		return addr, nil
	}
	return suitdrop.ParseAddress(s)
}

// msg replaces all "$name" JSON strings with the address of the named
// contract.
func (r *runner) msg(raw json.RawMessage) json.RawMessage {
	if len(raw) == 0 {
		return raw
	}
	s := string(raw)
	for name, addr := range r.names {
		s = strings.Replace(s, `"$`+name+`"`, `"`+addr.String()+`"`, -1)
	}
	return json.RawMessage(s)
}

func delivered(kind string, res *runtime.Result) StepResult {
	return StepResult{
		Kind:     kind,
		Contract: res.Contract,
		Data:     res.Data,
		Events:   eventsJSON(res.Events),
	}
}

func failed(kind string, err error) StepResult {
	code, log := errors.ABCIInfo(err, false)
	return StepResult{Kind: kind, Code: code, Error: log}
}
