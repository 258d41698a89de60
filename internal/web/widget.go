package web

// widgetScript is the embeddable chat widget. It injects a fixed-markup
// panel into the host page, wires click/keypress handlers, and answers
// with its own local template table after a short simulated delay.
const widgetScript = `(function() {
  'use strict';

  window.ApexAssistantWidget = {
    config: {
      position: 'bottom-right',
      accentColor: '#00bfff',
      onMessage: null
    },
    isOpen: false,

    init: function(options) {
      this.config = Object.assign(this.config, options || {});
      this.injectWidget();
      this.wireEvents();
    },

    injectWidget: function() {
      if (document.getElementById('apex-widget-container')) return;

      var container = document.createElement('div');
      container.id = 'apex-widget-container';
      container.style.cssText = 'position:fixed;bottom:20px;right:20px;z-index:99999;font-family:sans-serif;';
      container.innerHTML =
        '<button id="apex-widget-toggle" style="width:56px;height:56px;border-radius:50%;border:none;cursor:pointer;' +
        'background:' + this.config.accentColor + ';color:#fff;font-size:24px;">&#129302;</button>' +
        '<div id="apex-widget-panel" style="display:none;position:absolute;bottom:70px;right:0;width:340px;height:440px;' +
        'background:#1a1a1a;border:1px solid rgba(255,255,255,0.1);border-radius:12px;overflow:hidden;">' +
        '<div style="padding:12px;border-bottom:1px solid rgba(255,255,255,0.1);color:#fff;font-weight:bold;">APEX AI Assistant</div>' +
        '<div id="apex-widget-messages" style="height:300px;overflow-y:auto;padding:12px;"></div>' +
        '<div style="padding:12px;display:flex;gap:8px;">' +
        '<input id="apex-widget-input" type="text" placeholder="Ask me anything..." ' +
        'style="flex:1;padding:8px;border-radius:8px;border:1px solid rgba(255,255,255,0.2);background:#2a2a2a;color:#fff;">' +
        '<button id="apex-widget-send" style="padding:8px 12px;border:none;border-radius:8px;cursor:pointer;' +
        'background:' + this.config.accentColor + ';color:#fff;">Send</button>' +
        '</div></div>';
      document.body.appendChild(container);
    },

    wireEvents: function() {
      var self = this;
      document.getElementById('apex-widget-toggle').addEventListener('click', function() {
        self.toggle();
      });
      document.getElementById('apex-widget-send').addEventListener('click', function() {
        self.sendMessage();
      });
      document.getElementById('apex-widget-input').addEventListener('keypress', function(e) {
        if (e.key === 'Enter') self.sendMessage();
      });
    },

    toggle: function() {
      this.isOpen = !this.isOpen;
      var panel = document.getElementById('apex-widget-panel');
      panel.style.display = this.isOpen ? 'block' : 'none';
      if (this.isOpen) {
        var input = document.getElementById('apex-widget-input');
        setTimeout(function() { input.focus(); }, 100);
      }
    },

    sendMessage: function() {
      var input = document.getElementById('apex-widget-input');
      var message = input.value.trim();
      if (!message) return;

      this.addMessage(message, 'user');
      input.value = '';
      this.showTyping();

      var self = this;
      setTimeout(function() {
        self.hideTyping();
        var response = self.generateResponse(message);
        self.addMessage(response, 'assistant');
        if (self.config.onMessage) self.config.onMessage(response);
      }, 1500);
    },

    addMessage: function(message, type) {
      var area = document.getElementById('apex-widget-messages');
      var div = document.createElement('div');
      var isUser = type === 'user';
      div.style.cssText = 'padding:10px;border-radius:10px;margin-bottom:12px;font-size:13px;line-height:1.4;color:#fff;' +
        'background:' + (isUser ? 'rgba(0,191,255,0.2)' : 'rgba(42,42,42,0.9)') + ';' +
        'margin-' + (isUser ? 'left' : 'right') + ':40px;';
      div.textContent = message;
      area.appendChild(div);
      area.scrollTop = area.scrollHeight;
    },

    showTyping: function() {
      var area = document.getElementById('apex-widget-messages');
      var div = document.createElement('div');
      div.id = 'apex-widget-typing';
      div.style.cssText = 'color:#888;font-size:12px;margin-bottom:12px;';
      div.textContent = 'APEX AI is thinking...';
      area.appendChild(div);
      area.scrollTop = area.scrollHeight;
    },

    hideTyping: function() {
      var typing = document.getElementById('apex-widget-typing');
      if (typing) typing.remove();
    },

    generateResponse: function(input) {
      var lower = input.toLowerCase();

      if (lower.indexOf('email') !== -1 || lower.indexOf('draft') !== -1) {
        return "I'll help you draft that email! Here's a professional template:\n\nSubject: [Your Topic]\n\nHi [Name],\n\nHope you're doing well! [Your message]\n\nLet me know if you need anything else.\n\nBest,\n[Your name]\n\nWant me to customize this further?";
      }
      if (lower.indexOf('meeting') !== -1 || lower.indexOf('schedule') !== -1) {
        return "Let's prepare for your meeting! Here's what I suggest:\n\nAGENDA:\n- Opening & introductions (5 min)\n- Main topics discussion\n- Action items & next steps\n\nPREPARATION:\n- Review previous notes\n- Prepare key talking points\n- Set clear objectives\n\nNeed help with specific agenda items?";
      }
      if (lower.indexOf('task') !== -1 || lower.indexOf('organize') !== -1) {
        return "I'll help organize your tasks! Here's a smart approach:\n\nHIGH PRIORITY:\n- Urgent deadlines\n- Important meetings\n- Critical decisions\n\nMEDIUM PRIORITY:\n- Regular work items\n- Team coordination\n- Project milestones\n\nWant me to help prioritize specific tasks?";
      }
      if (lower.indexOf('report') !== -1 || lower.indexOf('analysis') !== -1) {
        return "Let's create a powerful report! Template structure:\n\n- Executive Summary\n- Key Findings\n- Data Analysis\n- Recommendations\n- Next Steps\n\nWhat topic should we cover?";
      }

      return "I'm here to help you work smarter! I can assist with email drafting, meeting preparation, report generation, and task organization. What would you like to work on?";
    }
  };

  if (document.readyState === 'loading') {
    document.addEventListener('DOMContentLoaded', function() {
      window.ApexAssistantWidget.init();
    });
  } else {
    window.ApexAssistantWidget.init();
  }
})();
`
