package handler

import (
	"sync"

	"github.com/Lolek-Productions/liturgy-faith-sub000/internal/model"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"k8s.io/klog/v2"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的校验引擎注册自定义标签
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			klog.Warningf("RegisterValidators: unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("liturgical_language", validateLanguage); err != nil {
			klog.Errorf("RegisterValidators: failed to register liturgical_language: %v", err)
		}
	})
}

func validateLanguage(fl validator.FieldLevel) bool {
	return model.Language(fl.Field().String()).IsValid()
}
