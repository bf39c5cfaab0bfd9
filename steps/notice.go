// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package steps

// NoticeTitle heads the notice step.
const NoticeTitle = "阅读须知"

// NoticeAcknowledgement labels the acknowledgment toggle.
const NoticeAcknowledgement = "我已知晓以上内容，同意继续使用MEO定制服务"

// NoticeText is shown on the notice step.
const NoticeText = `在使用 MEO 自主定制服务前，请仔细阅读以下重要信息：

1. 定制说明
• 本服务为 AI 数字人定制服务
• 定制过程需要提供声音和头像素材
• 生成时间约 3-7 个工作日

2. 素材要求
• 声音素材：需录制指定文本，确保音质清晰
• 头像素材：需正面清晰照片，背景干净无遮挡
• 所有素材需真实有效，不得使用他人素材

3. 服务条款
• 一经提交即进入定制生产流程
• 定制完成后不支持退款
• 请确保提供信息准确无误

4. 隐私保护
• 我们承诺保护您的个人信息安全
• 素材仅用于定制服务，不会用于其他用途
• 严格遵守相关法律法规

5. 联系我们
• 如有疑问可联系客服咨询
• 客服工作时间：9:00-18:00
• 我们将竭诚为您服务

请确认您已详细阅读并理解以上内容。`
