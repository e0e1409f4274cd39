package extensions

import (
	"fmt"

	"github.com/m1gwings/treedrawer/tree"

	knit "github.com/knit-fn/knit-go"
)

// DrawRegistry renders the registry as a scope → bean tree for diagnostics.
// Beans appear under their scope with their qualifiers; alternatives carry
// their priority.
func DrawRegistry(reg *knit.Registry) string {
	root := tree.NewTree(tree.NodeString("registry"))

	scopes := []knit.Scope{
		knit.ApplicationScoped,
		knit.SessionScoped,
		knit.RequestScoped,
		knit.Dependent,
	}

	added := 0
	for _, scope := range scopes {
		beans := beansInScope(reg, scope)
		if len(beans) == 0 {
			continue
		}

		root.AddChild(tree.NodeString(scope.String()))
		child, err := root.Child(added)
		added++
		if err != nil {
			continue
		}
		for _, b := range beans {
			child.AddChild(tree.NodeString(describeBean(b)))
		}
	}

	return root.String()
}

func beansInScope(reg *knit.Registry, scope knit.Scope) []*knit.Bean {
	var out []*knit.Bean
	for _, b := range reg.Beans() {
		if b.Scope() == scope {
			out = append(out, b)
		}
	}
	return out
}

func describeBean(b *knit.Bean) string {
	label := b.Name()
	if qs := b.Qualifiers(); len(qs) > 0 {
		for _, q := range qs {
			label += " " + q.String()
		}
	}
	if b.IsAlternative() {
		label += fmt.Sprintf(" (alternative, priority %d)", b.Priority())
	}
	return label
}
