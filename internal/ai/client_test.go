package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	. "github.com/smartystreets/goconvey/convey"

	voxamodel "voxa/internal/model"
)

// fakeChatModel 记录输入并返回固定结果
type fakeChatModel struct {
	got  []*schema.Message
	resp *schema.Message
	err  error
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	f.got = input
	return f.resp, f.err
}

func (f *fakeChatModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("not implemented")
}

func TestClient_Complete(t *testing.T) {
	Convey("Client.Complete 通过 ChatModel 生成回复", t, func() {
		ctx := context.Background()
		messages := []voxamodel.ChatMessage{
			{Role: voxamodel.RoleSystem, Content: "be brief"},
			{Role: voxamodel.RoleUser, Content: "Hello"},
			{Role: voxamodel.RoleAssistant, Content: "Hi"},
			{Role: voxamodel.RoleUser, Content: "How are you?"},
		}

		Convey("消息按角色转换", func() {
			fake := &fakeChatModel{resp: schema.AssistantMessage("fine", nil)}
			content, err := NewClientWithModel(fake).Complete(ctx, messages)
			So(err, ShouldBeNil)
			So(content, ShouldEqual, "fine")
			So(len(fake.got), ShouldEqual, 4)
			So(fake.got[0].Role, ShouldEqual, schema.System)
			So(fake.got[1].Role, ShouldEqual, schema.User)
			So(fake.got[2].Role, ShouldEqual, schema.Assistant)
			So(fake.got[3].Content, ShouldEqual, "How are you?")
		})

		Convey("空内容返回 ErrEmptyContent", func() {
			fake := &fakeChatModel{resp: schema.AssistantMessage("", nil)}
			_, err := NewClientWithModel(fake).Complete(ctx, messages)
			So(errors.Is(err, ErrEmptyContent), ShouldBeTrue)
		})

		Convey("模型错误原样返回", func() {
			boom := errors.New("boom")
			fake := &fakeChatModel{err: boom}
			_, err := NewClientWithModel(fake).Complete(ctx, messages)
			So(errors.Is(err, boom), ShouldBeTrue)
		})
	})
}
