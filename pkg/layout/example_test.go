package layout_test

import (
	"fmt"

	"github.com/matzehuels/wordcloud/pkg/cloud"
	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/words"
)

func ExampleBuild() {
	cfg := cloud.Default()
	cfg.WordLimit = 3

	entries := []words.Entry{
		{ID: "1", Text: "gopher", Weight: 10},
		{ID: "2", Text: "channel", Weight: 30},
		{ID: "3", Text: "select", Weight: 20},
		{ID: "4", Text: "dropped", Weight: 99},
	}

	req, err := layout.Build(entries, cfg, nil)
	if err != nil {
		panic(err)
	}
	for _, it := range req.Items {
		fmt.Printf("%s %.0f\n", it.Text, it.FontSize)
	}
	// Output:
	// gopher 20
	// channel 70
	// select 45
}
