package ffmpeg

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseProbeOutput(t *testing.T) {
	Convey("解析 ffprobe 输出", t, func() {
		Convey("正常输出", func() {
			info, err := parseProbeOutput([]byte(`{"format":{"duration":"2.351000"}}`))
			So(err, ShouldBeNil)
			So(info.Duration, ShouldAlmostEqual, 2.351, 0.0001)
		})

		Convey("缺少 duration", func() {
			_, err := parseProbeOutput([]byte(`{"format":{}}`))
			So(err, ShouldNotBeNil)
		})

		Convey("非 JSON", func() {
			_, err := parseProbeOutput([]byte(`N/A`))
			So(err, ShouldNotBeNil)
		})
	})
}

func TestNewClient(t *testing.T) {
	Convey("FFPLAY_PATH 覆盖默认路径", t, func() {
		t.Setenv("FFPLAY_PATH", "/opt/ffmpeg/bin/ffplay")
		t.Setenv("FFPROBE_PATH", "")

		c := NewClient()
		So(c.ffplayPath, ShouldEqual, "/opt/ffmpeg/bin/ffplay")
		So(c.ffprobePath, ShouldEqual, "ffprobe")
	})

	Convey("可执行文件不存在时 Play 返回错误", t, func() {
		t.Setenv("FFPLAY_PATH", "/nonexistent/ffplay")

		err := NewClient().Play(context.Background(), "speech.mp3")
		So(err, ShouldNotBeNil)
		So(NewClient().Available(), ShouldBeFalse)
	})
}
