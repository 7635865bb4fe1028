package main

import (
	"fmt"
	"strings"

	"github.com/miekg/pkcs11"
	"github.com/spf13/cobra"

	"github.com/niclabs/ckabi/ck"
	"github.com/niclabs/ckabi/criptoki"
	"github.com/niclabs/ckabi/internal/config"
	"github.com/niclabs/ckabi/internal/logger"
	"github.com/niclabs/ckabi/inventory"
)

func newInfoCmd() *cobra.Command {
	var record, verify bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the CK_INFO of a library",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := readInfo(conf.Module)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), info)
			if record {
				snapshot, err := recordInfo(conf, info)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "recorded %s\n", snapshot.ID)
			}
			if verify {
				if err := verifyInfo(conf.Module.Path, info); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "verified against github.com/miekg/pkcs11")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&record, "record", false, "save the report in the inventory")
	cmd.Flags().BoolVar(&verify, "verify", false, "compare the report with the one read by github.com/miekg/pkcs11")
	return cmd
}

// initializeArgs builds the arguments the module settings ask for. With Go
// mutexes, a fresh table is registered as the callbacks.
func initializeArgs(mc config.ModuleConfig) (*ck.InitializeArgs, error) {
	flags, err := mc.InitializeFlags()
	if err != nil {
		return nil, err
	}
	if mc.Mutexes == config.MutexesNone {
		return criptoki.NoMutexArgs(flags), nil
	}
	if err := criptoki.RegisterMutexFuncs(ck.NewMutexTable().Funcs()); err != nil {
		return nil, err
	}
	return criptoki.MutexArgs(flags), nil
}

// readInfo runs a whole load, initialize, get info, finalize cycle.
func readInfo(mc config.ModuleConfig) (*ck.Info, error) {
	if mc.Path == "" {
		return nil, fmt.Errorf("no library given: use --module or module.path")
	}
	args, err := initializeArgs(mc)
	if err != nil {
		return nil, err
	}
	log := logger.Named("info")
	log.Debugw("initializing", "module", mc.Path, "args", args.String())

	m, err := criptoki.Load(mc.Path)
	if err != nil {
		return nil, err
	}
	defer m.Close()
	if err := m.Initialize(args); err != nil {
		return nil, err
	}
	info, err := m.GetInfo()
	if err != nil {
		return nil, err
	}
	if err := m.Finalize(); err != nil {
		log.Warnw("finalize failed", "module", mc.Path, "error", err)
	}
	return info, nil
}

func recordInfo(conf *config.Config, info *ck.Info) (*inventory.Snapshot, error) {
	storage, err := newStorage(conf.Inventory)
	if err != nil {
		return nil, err
	}
	defer storage.CloseStorage()
	snapshot := inventory.NewSnapshot(conf.Module.Path, info)
	if err := storage.SaveSnapshot(snapshot); err != nil {
		return nil, err
	}
	return snapshot, nil
}

// verifyInfo compares info with the one miekg/pkcs11 reads from the same
// library. Only fields before flags are compared: libraries built without
// 1 byte packing place the later ones elsewhere.
func verifyInfo(path string, info *ck.Info) error {
	p := pkcs11.New(path)
	if p == nil {
		return fmt.Errorf("miekg/pkcs11 could not load %s", path)
	}
	defer p.Destroy()
	if err := p.Initialize(); err != nil {
		return err
	}
	defer p.Finalize()
	want, err := p.GetInfo()
	if err != nil {
		return err
	}
	return compareInfo(want, info)
}

func compareInfo(want pkcs11.Info, info *ck.Info) error {
	if want.CryptokiVersion.Major != info.CryptokiVersion.Major || want.CryptokiVersion.Minor != info.CryptokiVersion.Minor {
		return fmt.Errorf("cryptoki version mismatch: miekg/pkcs11 read %d.%d, got %s",
			want.CryptokiVersion.Major, want.CryptokiVersion.Minor, info.CryptokiVersion)
	}
	if got := strings.TrimRight(want.ManufacturerID, " \x00"); got != info.Manufacturer() {
		return fmt.Errorf("manufacturer mismatch: miekg/pkcs11 read %q, got %q", got, info.Manufacturer())
	}
	return nil
}
