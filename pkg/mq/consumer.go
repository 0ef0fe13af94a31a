package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS，限制未确认消息数量
	err = ch.Qos(
		10,    // prefetch count
		0,     // prefetch size
		false, // global
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	// 消费者可能先于生产者启动
	if err := setupTopology(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
	}, nil
}

func (c *Consumer) ConsumeLikeEvents(ctx context.Context, handler LikeEventHandler) error {
	return c.consume(ctx, LikeEventQueue, likeDelivery(handler))
}

func (c *Consumer) ConsumeCommentEvents(ctx context.Context, handler CommentEventHandler) error {
	return c.consume(ctx, CommentEventQueue, commentDelivery(handler))
}

func likeDelivery(handler LikeEventHandler) deliveryFunc {
	return func(ctx context.Context, body []byte) (bool, error) {
		var event LikeEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false, err
		}
		return true, handler.HandleLikeEvent(ctx, &event)
	}
}

func commentDelivery(handler CommentEventHandler) deliveryFunc {
	return func(ctx context.Context, body []byte) (bool, error) {
		var event CommentEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return false, err
		}
		return true, handler.HandleCommentEvent(ctx, &event)
	}
}

// deliveryFunc 返回的 bool 表示消息能否解析，解析失败的消息不重新入队
type deliveryFunc func(ctx context.Context, body []byte) (decoded bool, err error)

func (c *Consumer) consume(ctx context.Context, queue string, fn deliveryFunc) error {
	msgs, err := c.channel.Consume(
		queue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer on %s: %w", queue, err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Infof("%s consumer context cancelled", queue)
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Infof("%s consumer channel closed", queue)
					return
				}
				handleDelivery(ctx, queue, d, fn)
			}
		}
	}()

	return nil
}

func handleDelivery(ctx context.Context, queue string, d amqp091.Delivery, fn deliveryFunc) {
	decoded, err := fn(ctx, d.Body)
	if !decoded {
		hlog.Errorf("Failed to unmarshal message from %s: %v", queue, err)
		d.Nack(false, false) // 拒绝消息，不重新入队
		return
	}
	if err != nil {
		hlog.Errorf("Failed to handle message from %s: %v", queue, err)
		d.Nack(false, !d.Redelivered) // 只重新入队一次
		return
	}
	d.Ack(false) // 确认消息
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
