package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// topology 交换机与队列一一绑定
var topology = []struct {
	exchange string
	queue    string
}{
	{LikeEventExchange, LikeEventQueue},
	{CommentEventExchange, CommentEventQueue},
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	// 声明exchanges和queues
	if err := setupTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

func setupTopology(ch *amqp091.Channel) error {
	for _, t := range topology {
		// 声明交换机
		err := ch.ExchangeDeclare(
			t.exchange,
			"direct",
			true,  // durable
			false, // auto-delete
			false, // internal
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", t.exchange, err)
		}

		// 声明队列
		_, err = ch.QueueDeclare(
			t.queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return fmt.Errorf("failed to declare queue %s: %w", t.queue, err)
		}

		// 绑定队列到交换机
		if err = ch.QueueBind(t.queue, "", t.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue %s: %w", t.queue, err)
		}
	}
	return nil
}

func (p *Producer) PublishLikeEvent(ctx context.Context, event *LikeEvent) error {
	if err := p.publish(ctx, LikeEventExchange, event); err != nil {
		return fmt.Errorf("failed to publish like event: %w", err)
	}
	hlog.CtxInfof(ctx, "Published like event: %+v", event)
	return nil
}

func (p *Producer) PublishCommentEvent(ctx context.Context, event *CommentEvent) error {
	if err := p.publish(ctx, CommentEventExchange, event); err != nil {
		return fmt.Errorf("failed to publish comment event: %w", err)
	}
	hlog.CtxInfof(ctx, "Published comment event: %+v", event)
	return nil
}

func (p *Producer) publish(ctx context.Context, exchange string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	return p.channel.PublishWithContext(
		ctx,
		exchange,
		"",
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
