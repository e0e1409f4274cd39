// Package knit is a runtime container that wires loosely-coupled components
// ("beans") by type and qualifying metadata, manages their lifecycle
// according to declared scopes, and delivers typed events to interested
// observer methods.
//
// # Overview
//
// Knit organizes code around four core concepts:
//
//  1. Beans: registered units of behavior with implemented types, qualifiers,
//     a scope, and a factory for creating and destroying instances
//  2. Contexts: per-scope storage of live instances within one extent
//     (for example, one HTTP request)
//  3. Creational contexts: trackers for the transient instances created
//     while satisfying one request, released LIFO when the request completes
//  4. Observer methods: bean methods notified when a matching event is fired
//
// # Basic Usage
//
// Declare beans, register them, and build a container:
//
//	reg := knit.NewRegistry()
//
//	greeter := knit.Define("greeter", func(cc *knit.CreationalContext) (*Greeter, error) {
//	    return &Greeter{Greeting: "hello"}, nil
//	}, knit.In(knit.ApplicationScoped))
//	reg.Register(greeter)
//
//	c, err := knit.New(reg)
//
// Resolve and materialize instances:
//
//	cc := c.NewCreationalContext()
//	defer cc.Release()
//
//	g, err := knit.Instance[*Greeter](c, cc)
//
// Resolution is a pure lookup over the frozen registry; ambiguity between
// unranked candidates and unsatisfied requests fail with typed errors that
// name every remaining candidate.
//
// # Scopes and Extents
//
// Shared scopes hold at most one instance per bean per extent. A
// collaborator opens and closes extents around a unit of work:
//
//	c.Activate(knit.RequestScoped, requestID)
//	defer c.Deactivate(knit.RequestScoped)
//
// Dependent-scoped beans bypass shared storage: every request gets a fresh
// instance, destroyed in reverse creation order when the owning creational
// context is released.
//
// # Events
//
// Observer methods are declared against a bean's business methods and fired
// with plain values:
//
//	obs := knit.Observe[OrderPlaced](auditor, "record")
//	reg.RegisterObserver(obs)
//
//	err := c.Fire(OrderPlaced{ID: "o-1"})
//
// IN_PROGRESS observers run synchronously in registration order; observers
// tagged with other transaction phases are handed to a TransactionBoundary
// collaborator. Delivery fails fast: the first observer error stops the
// remaining matched set and surfaces to the firing caller after cleanup.
//
// # Interception
//
// Interceptors and decorators wrap a bean's business methods in strictly
// nested declared order. Chains are built once per method and cached;
// invocation is plain function calls, no runtime code generation.
package knit
