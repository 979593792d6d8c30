// Package loom is the application shell of the Loom rendering kernel.
//
// A Loom application is a single state value, a view function that
// derives a virtual tree from that state, and a set of reducers keyed
// by command name. User interaction emits commands; reducers fold the
// payload into fresh state; after every command the tree is torn down
// and rebuilt from the new state. There is no diffing: correctness is
// bought with full rebuilds, and the presentation layer stays a dumb
// mirror of the last view call.
//
//	app := loom.New(loom.Config{
//	    State: 0,
//	    View: func(state any, emit loom.EmitFunc) *vdom.VNode {
//	        n := state.(int)
//	        return vdom.Div(
//	            vdom.Span(vdom.Textf("%d", n)),
//	            vdom.Button(vdom.Text("+"), vdom.OnClick(func(vdom.Event) {
//	                emit("increment", nil)
//	            })),
//	        )
//	    },
//	    Reducers: map[string]loom.Reducer{
//	        "increment": func(state, _ any) any { return state.(int) + 1 },
//	    },
//	})
//
//	doc := dom.NewDocument()
//	if err := app.Mount(doc.Body()); err != nil { ... }
package loom
