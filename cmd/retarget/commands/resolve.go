package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kevmal/retarget/internal/replace"
	"github.com/kevmal/retarget/internal/universe"
)

var resolveBackward bool

var resolveCmd = &cobra.Command{
	Use:   "resolve <origin.yaml> <target.yaml> <type>",
	Short: "Resolve a type name between two universe manifests",
	Long: `Resolve looks up a qualified type name in the origin universe and
resolves it into the target universe, printing the resolved name and the
module that defines it.

With --backward, the name is looked up in the target universe and resolved
into the origin universe instead.`,
	Args: cobra.ExactArgs(3),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveBackward, "backward", false, "Resolve target -> origin instead")
}

func runResolve(cmd *cobra.Command, args []string) error {
	origin, err := universe.LoadManifest(args[0])
	if err != nil {
		return fmt.Errorf("origin manifest: %w", err)
	}
	target, err := universe.LoadManifest(args[1])
	if err != nil {
		return fmt.Errorf("target manifest: %w", err)
	}

	dir := replace.Forward
	src := origin
	if resolveBackward {
		dir = replace.Backward
		src = target
	}

	name := args[2]
	var t *universe.NamedType
	for _, mod := range src {
		if found, ok := mod.TypeByName(name); ok {
			t = found
			break
		}
	}
	if t == nil {
		return fmt.Errorf("type %s not found in source universe [%s]", name, src)
	}

	r := replace.New(origin, target)
	resolved, err := r.ResolveType(dir, t)
	if err != nil {
		return err
	}

	fmt.Printf("%s -> %s\n", t.FullName(), resolved.FullName())
	if named, ok := resolved.(*universe.NamedType); ok && named.Owner != nil {
		fmt.Printf("  defined by module %s\n", named.Owner.Name())
	}
	return nil
}
