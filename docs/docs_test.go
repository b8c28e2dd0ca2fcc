package docs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/swaggo/swag"
)

var annotation = regexp.MustCompile(`(?m)^// @(Summary|Description)\s+(.+)$`)

func TestDocMatchesHandlerAnnotations(t *testing.T) {
	Convey("注册的文档与 handler 注释一致", t, func() {
		doc, err := swag.ReadDoc()
		So(err, ShouldBeNil)

		var parsed map[string]any
		So(json.Unmarshal([]byte(doc), &parsed), ShouldBeNil)
		So(parsed["paths"], ShouldContainKey, "/api/chat")

		files, err := filepath.Glob("../internal/handler/*.go")
		So(err, ShouldBeNil)
		So(files, ShouldNotBeEmpty)

		found := 0
		for _, file := range files {
			if strings.HasSuffix(file, "_test.go") {
				continue
			}
			src, err := os.ReadFile(file)
			So(err, ShouldBeNil)

			for _, m := range annotation.FindAllStringSubmatch(string(src), -1) {
				found++
				So(doc, ShouldContainSubstring, strings.TrimSpace(m[2]))
			}
		}
		So(found, ShouldBeGreaterThan, 0)
	})
}
