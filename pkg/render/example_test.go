package render_test

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/pack"
	"github.com/matzehuels/wordcloud/pkg/render"
)

func ExampleReconciler() {
	rec := render.NewReconciler(render.ModeIncremental)

	ops := rec.Reconcile([]pack.Placed{
		{Key: "a", Text: "hello", X: 10, Y: 20, FontSize: 40},
		{Key: "b", Text: "world", X: -30, Y: 5, FontSize: 25},
	})
	enter, update, exit := render.Counts(ops)
	fmt.Printf("first pass: %d enter, %d update, %d exit\n", enter, update, exit)

	// "a" moves, "b" is deleted and "c" is new.
	ops = rec.Reconcile([]pack.Placed{
		{Key: "a", Text: "hello", X: 0, Y: 0, FontSize: 40},
		{Key: "c", Text: "again", X: 50, Y: -10, FontSize: 20},
	})
	enter, update, exit = render.Counts(ops)
	fmt.Printf("second pass: %d enter, %d update, %d exit\n", enter, update, exit)
	fmt.Println("live glyphs:", rec.Len())
	// Output:
	// first pass: 2 enter, 0 update, 0 exit
	// second pass: 1 enter, 1 update, 1 exit
	// live glyphs: 2
}
