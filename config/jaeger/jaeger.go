package jaeger

import (
	"io"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/uber/jaeger-client-go"
	jaegercfg "github.com/uber/jaeger-client-go/config"
)

// InitJaeger 初始化 Jaeger 并注册为全局 tracer，gorm 的 opentracing 插件会从全局 tracer 取 span
func InitJaeger(service, agent string) (opentracing.Tracer, io.Closer, error) {
	cfg := &jaegercfg.Configuration{
		ServiceName: service,
		Sampler: &jaegercfg.SamplerConfig{
			Type:  jaeger.SamplerTypeConst,
			Param: 1,
		},
		Reporter: &jaegercfg.ReporterConfig{
			LogSpans:           false,
			LocalAgentHostPort: agent,
		},
	}

	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaeger.StdLogger))
	if err != nil {
		hlog.Errorf("cannot init jaeger: %v", err)
		return nil, nil, err
	}
	opentracing.SetGlobalTracer(tracer)
	hlog.Infof("Jaeger tracer initialized, service=%s agent=%s", service, agent)
	return tracer, closer, nil
}
