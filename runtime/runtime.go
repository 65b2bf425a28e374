package runtime

import (
	"context"
	"encoding/json"

	"github.com/iov-one/suitdrop"
	"github.com/iov-one/suitdrop/app"
	"github.com/iov-one/suitdrop/errors"
	"github.com/iov-one/suitdrop/gconf"
	"github.com/iov-one/suitdrop/orm"
	"github.com/iov-one/suitdrop/x"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Auth is the authenticator that contracts hosted by the runtime must use.
// The runtime declares the sender of every contract call with it.
var Auth = x.CtxAuth{Key: "runtime"}

// Result is returned for every successfully processed top level message.
type Result struct {
	// Contract is the address of the called contract. For an
	// instantiation this is the address of the created instance.
	Contract suitdrop.Address
	Data     []byte
	Log      string
	// Events emitted by all contracts involved, in execution order.
	Events []suitdrop.Event
}

// Runtime hosts contract instances on top of a commit store.
//
// Messages are processed one at a time, so no locking is done.
type Runtime struct {
	store   *app.CommitStore
	logger  log.Logger
	metrics *Metrics

	codes     map[uint64]suitdrop.Contract
	contracts orm.ModelBucket
	instances orm.Sequence

	chainID string
	conf    Config
	// block is the context of the block in progress, nil between Commit
	// and BeginBlock.
	block suitdrop.Context
}

var _ suitdrop.Initializer = (*Runtime)(nil)

// New returns a runtime operating on given store. Nil metrics disable
// collection.
func New(kv suitdrop.CommitKVStore, logger log.Logger, metrics *Metrics) (*Runtime, error) {
	cs, err := app.NewCommitStore(kv)
	if err != nil {
		return nil, errors.Wrap(err, "commit store")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	r := &Runtime{
		store:     cs,
		logger:    logger.With("module", "runtime"),
		metrics:   metrics,
		codes:     make(map[uint64]suitdrop.Contract),
		contracts: NewContractBucket(),
		instances: NewInstanceSequence(),
	}
	if r.chainID, err = app.LoadChainID(cs.DeliverStore()); err != nil {
		return nil, err
	}
	if err := r.loadConfig(cs.DeliverStore()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Runtime) loadConfig(db suitdrop.ReadOnlyKVStore) error {
	switch err := gconf.Load(db, configPkg, &r.conf); {
	case err == nil:
		return nil
	case errors.ErrNotFound.Is(err):
		r.conf = Config{MaxDepth: DefaultMaxDepth}
		return nil
	default:
		return errors.Wrap(err, "runtime config")
	}
}

// ChainID returns the chain id set at genesis, empty before.
func (r *Runtime) ChainID() string {
	return r.chainID
}

// RegisterCode makes contract code available for instantiation under given
// id. Code ids are not persisted and must be registered with the same id
// every time the runtime is created.
func (r *Runtime) RegisterCode(id uint64, c suitdrop.Contract) error {
	if id == 0 {
		return errors.Wrap(errors.ErrInput, "code id must not be zero")
	}
	if _, ok := r.codes[id]; ok {
		return errors.Wrapf(errors.ErrDuplicate, "code %d", id)
	}
	r.codes[id] = c
	return nil
}

// InitChain stores the chain id and the genesis configuration. It can be
// called only once for a given store.
func (r *Runtime) InitChain(chainID string, appState suitdrop.Options) error {
	db := r.store.DeliverStore()
	if err := app.SaveChainID(db, chainID); err != nil {
		return err
	}
	if err := r.FromGenesis(appState, db); err != nil {
		return errors.Wrap(err, "genesis")
	}
	r.chainID = chainID
	return r.loadConfig(db)
}

// FromGenesis stores the runtime configuration declared in the genesis
// under conf.runtime, or the default one.
func (r *Runtime) FromGenesis(opts suitdrop.Options, kv suitdrop.KVStore) error {
	var conf Config
	err := gconf.InitConfig(kv, opts, configPkg, &conf)
	if errors.ErrNotFound.Is(err) {
		return gconf.Save(kv, configPkg, &Config{MaxDepth: DefaultMaxDepth})
	}
	return err
}

// BeginBlock starts processing of a new block. Messages can be processed
// only within a block.
func (r *Runtime) BeginBlock(header abci.Header) error {
	if r.chainID == "" {
		return errors.Wrap(errors.ErrState, "chain not initialized")
	}
	info, err := suitdrop.NewBlockInfo(header, r.chainID)
	if err != nil {
		return err
	}
	ctx := suitdrop.WithLogger(context.Background(), r.logger)
	r.block = suitdrop.WithBlockInfo(ctx, info)
	r.logger.Debug("begin block", "height", header.Height)
	return nil
}

// Commit persists all changes of the current block.
func (r *Runtime) Commit() (suitdrop.CommitID, error) {
	r.block = nil
	id, err := r.store.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	r.logger.Info("commit", "version", id.Version, "hash", id.Hash)
	return id, nil
}

// CommitInfo returns the version and hash of the latest commit.
func (r *Runtime) CommitInfo() (suitdrop.CommitID, error) {
	return r.store.CommitInfo()
}

// ContractInfo returns the metadata of a contract instance.
func (r *Runtime) ContractInfo(addr suitdrop.Address) (*ContractInfo, error) {
	var info ContractInfo
	if err := r.contracts.One(r.store.DeliverStore(), addr, &info); err != nil {
		return nil, errors.Wrapf(err, "contract %s", addr)
	}
	return &info, nil
}

// Instantiate creates a new instance of given code.
func (r *Runtime) Instantiate(codeID uint64, sender suitdrop.Address, msg json.RawMessage, label string, admin suitdrop.Address) (*Result, error) {
	return r.deliver("instantiate", func(e *execution) (*Result, error) {
		if err := sender.Validate(); err != nil {
			return nil, errors.Wrap(err, "sender")
		}
		addr, res, events, err := e.instantiate(0, codeID, sender, msg, label, admin)
		if err != nil {
			return nil, err
		}
		return &Result{Contract: addr, Data: res.Data, Log: res.Log, Events: events}, nil
	})
}

// Execute sends a message to a contract instance.
func (r *Runtime) Execute(contract, sender suitdrop.Address, msg json.RawMessage) (*Result, error) {
	return r.deliver("execute", func(e *execution) (*Result, error) {
		if err := sender.Validate(); err != nil {
			return nil, errors.Wrap(err, "sender")
		}
		res, events, err := e.execute(0, contract, sender, msg)
		if err != nil {
			return nil, err
		}
		return &Result{Contract: contract, Data: res.Data, Log: res.Log, Events: events}, nil
	})
}

// BatchMsg is a single message of an ExecuteBatch call.
type BatchMsg struct {
	Contract suitdrop.Address `json:"contract"`
	Msg      json.RawMessage  `json:"msg"`
}

// BatchData is the result data of ExecuteBatch, holding the data returned
// by each message.
type BatchData struct {
	Results [][]byte
}

// ExecuteBatch executes all messages in order, as a single atomic unit.
// Result data is the amino encoded BatchData.
func (r *Runtime) ExecuteBatch(sender suitdrop.Address, msgs []BatchMsg) (*Result, error) {
	return r.deliver("batch", func(e *execution) (*Result, error) {
		if err := sender.Validate(); err != nil {
			return nil, errors.Wrap(err, "sender")
		}
		if len(msgs) == 0 {
			return nil, errors.Wrap(errors.ErrEmpty, "batch")
		}
		var (
			data   BatchData
			events []suitdrop.Event
		)
		for i, m := range msgs {
			res, evs, err := e.execute(0, m.Contract, sender, m.Msg)
			if err != nil {
				return nil, errors.Wrapf(err, "batch message %d", i)
			}
			data.Results = append(data.Results, res.Data)
			events = append(events, evs...)
		}
		raw, err := cdc.MarshalBinaryBare(data)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodec, "batch data: %s", err)
		}
		return &Result{Data: raw, Events: events}, nil
	})
}

// Migrate switches a contract instance to another code and calls its
// migrate entry point. Only the instance admin is allowed to migrate.
func (r *Runtime) Migrate(contract, sender suitdrop.Address, codeID uint64, msg json.RawMessage) (*Result, error) {
	return r.deliver("migrate", func(e *execution) (*Result, error) {
		var info ContractInfo
		if err := r.contracts.One(e.db, contract, &info); err != nil {
			return nil, errors.Wrapf(err, "contract %s", contract)
		}
		if len(info.Admin) == 0 || !info.Admin.Equals(sender) {
			return nil, errors.Wrapf(errors.ErrUnauthorized, "not the admin of %s", contract)
		}
		code, ok := r.codes[codeID]
		if !ok {
			return nil, errors.Wrapf(ErrUnknownCode, "code %d", codeID)
		}
		info.CodeID = codeID
		if err := r.contracts.Put(e.db, contract, &info); err != nil {
			return nil, err
		}
		res, err := code.Migrate(e.contractCtx(contract, sender), e.instanceStore(contract), msg)
		if err != nil {
			return nil, errors.Wrapf(err, "migrate %s", contract)
		}
		if res == nil {
			res = &suitdrop.DeliverResult{}
		}
		events, err := e.process(0, contract, res)
		if err != nil {
			return nil, err
		}
		return &Result{Contract: contract, Data: res.Data, Log: res.Log, Events: events}, nil
	})
}

// Query runs a read only request against the latest state.
func (r *Runtime) Query(contract suitdrop.Address, msg json.RawMessage) ([]byte, error) {
	ctx := r.block
	if ctx == nil {
		ctx = suitdrop.WithLogger(context.Background(), r.logger)
	}
	e := &execution{r: r, db: r.store.DeliverStore(), block: ctx}
	return e.query(0, contract, msg)
}

// Simulate runs the check entry point of a contract against the state of
// the current block. No state is modified.
func (r *Runtime) Simulate(contract, sender suitdrop.Address, msg json.RawMessage) (*suitdrop.CheckResult, error) {
	if r.block == nil {
		return nil, ErrNoBlock
	}
	cache := r.store.DeliverStore().CacheWrap()
	defer cache.Discard()

	e := &execution{r: r, db: cache, block: r.block}
	code, err := e.code(contract)
	if err != nil {
		return nil, err
	}
	return code.Check(e.contractCtx(contract, sender), e.instanceStore(contract), msg)
}

// deliver runs fn within a single cache of the deliver store. The cache is
// written only if fn succeeds.
func (r *Runtime) deliver(kind string, fn func(*execution) (*Result, error)) (res *Result, err error) {
	if r.block == nil {
		return nil, ErrNoBlock
	}
	defer func() { r.metrics.message(kind, err) }()

	cache := r.store.DeliverStore().CacheWrap()
	defer func() {
		if err != nil {
			res = nil
			cache.Discard()
			r.logger.Info("message failed", "kind", kind, "err", err)
			return
		}
		if err = cache.Write(); err != nil {
			res = nil
			err = errors.Wrap(err, "write cache")
		}
	}()
	defer errors.Recover(&err)

	return fn(&execution{r: r, db: cache, block: r.block})
}
