package model

// PreferenceModel 是偏好模型的最小抽象：输入 (浏览者,类目) 偏好分，
// 输出正类（愿意购买/互动）概率，范围 [0,1]。
//
// 模型是离线训练的不透明制品，排序引擎不得假设其内部形态；
// 具体实现可以是本地模型（LR）或远程打分服务（RPC）。
type PreferenceModel interface {
	Name() string
	Predict(score float64) (float64, error)
}
